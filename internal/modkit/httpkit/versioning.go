package httpkit

import (
	"net/http"
	"strings"
)

// V1 is the base path every module mounts below
const V1 = "/api/v1"

// APIPrefix returns the mount path for an API version; "v2" and "/v2" both
// give /api/v2
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(version, "/")
}

// MountAPI mounts a subrouter under /api/{version}, applies mw to that scope
// then hands the scoped router to mount
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//	  fertility.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIPrefix(version), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 mounts under V1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
