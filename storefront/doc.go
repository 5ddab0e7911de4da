// Package storefront is the web storefront's view of the mall backend. It
// runs the request client under the storefront profile: every call returns
// the whole {code, message, data} reply, nothing is shown to the user, and a
// 401 code is an ordinary failure.
//
//	c, _ := request.New(request.Config{Profile: request.ProfileStorefront})
//	shop := storefront.New(c, credential.New(store))
//	reply, err := shop.ProductList(ctx, storefront.ProductQuery{PageNum: 1})
package storefront
