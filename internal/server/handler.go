package server

import (
	"github.com/nhdewitt/rig/internal/middleware"
	"github.com/nhdewitt/rig/internal/router"
)

type Handler = router.Handler

type Middleware = middleware.Func
