// Package gateway guards downstream handlers with schema validation.
//
// Middleware decodes the JSON body, validates it and either rejects the
// request with 422 or forwards it with the body rewritten to the validated
// record, so handlers never see undeclared or failing fields:
//
//	r := chi.NewRouter()
//	r.With(gateway.Middleware(reg, "signup", gateway.WithLogger(log))).
//	    Post("/signup", signupHandler)
//
// The full engine.Result is available to next through ResultFromContext.
package gateway
