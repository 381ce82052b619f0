package httpkit

import "net/http"

// MountUnder mounts a module subtree at prefix
// middlewares and the optional subrouter seam apply before mount runs
func MountUnder(
	r Router,
	prefix string,
	mw []func(http.Handler) http.Handler,
	sub func(Router) Router,
	mount func(Router),
) {
	r.Route(prefix, func(rr Router) {
		if len(mw) > 0 {
			rr.Use(mw...)
		}
		if sub != nil {
			rr = sub(rr)
		}
		if mount != nil {
			mount(rr)
		}
	})
}
