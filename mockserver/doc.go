// Package mockserver is an in-memory mall backend. It serves the /api/v1
// surface the mini-program services call, answering every request with a
// {code, message, data} envelope, so the client stack can be exercised end
// to end without the real services.
//
// Protected routes require an "Authorization: Bearer <token>" header carrying
// a token issued by /api/v1/wechat/login; anything else gets code 401.
package mockserver
