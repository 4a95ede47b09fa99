package controllers

import "github.com/gorilla/mux"

// Controller is a mountable route group. Key doubles as the mount path and
// the registration identity.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// BasePath is the shared API namespace for every controller in this package.
const BasePath = "/runorder/api"
