// Package request is the mall backend's request client.
//
// Every call goes through the same steps: the descriptor is turned into an
// HTTP request (base URL, JSON content type, caller headers, then the bearer
// token from the credential provider), the transport performs it, and the
// outcome is classified:
//
//   - no response: Network, "network connection failed"
//   - non-2xx status: Network, "network error"
//   - envelope code 200: resolved with data (or the whole body)
//   - envelope code 401: Unauthorized; credentials are cleared, the user is
//     told to log in again and switched to the login tab
//   - any other code: Application, with the envelope message
//
// Get, Post, Put and Delete run the resulting effects before they return.
// Do returns the classified Result with its effects untouched.
//
//	c, err := request.New(cfg,
//	    request.WithCredentials(creds),
//	    request.WithEffects(effect.NewRunner(
//	        effect.WithNotifier(effect.LogNotifier{}),
//	        effect.WithNavigator(effect.LogNavigator{}),
//	        effect.WithCredentialClearer(creds),
//	    )),
//	)
//	orders, err := request.GetAs[[]order.Order](ctx, c, "/api/v1/orders", map[string]any{"page": 1})
package request
