package handlers

import (
	"time"

	intconfig "marketdash/internal/config"
	"marketdash/internal/http/middleware"
	"marketdash/internal/poller"
	"marketdash/internal/services"
	"marketdash/internal/utils"

	"github.com/gin-gonic/gin"
)

// Server holds what the handlers need. Config is read per request so hot
// reloads apply without a restart.
type Server struct {
	API       services.Marketplace
	Refresher *poller.Refresher
	History   services.SnapshotLister
	Config    func() intconfig.Env
	Now       func() time.Time
}

func (s *Server) env() intconfig.Env {
	if s.Config == nil {
		return intconfig.Env{}
	}
	return s.Config()
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s *Server) listing(c *gin.Context) services.ListingService {
	return services.ListingService{API: s.API, RequestID: middleware.GetRequestID(c)}
}

func (s *Server) cart(c *gin.Context) services.CartService {
	return services.CartService{API: s.API, Symbol: s.env().CurrencySymbol, RequestID: middleware.GetRequestID(c)}
}

func (s *Server) orders(c *gin.Context) services.OrderService {
	return services.OrderService{API: s.API, RequestID: middleware.GetRequestID(c)}
}

func (s *Server) overview(c *gin.Context) services.OverviewService {
	return services.OverviewService{
		Refresher: s.Refresher,
		History:   s.History,
		Symbol:    s.env().CurrencySymbol,
		RequestID: middleware.GetRequestID(c),
	}
}
