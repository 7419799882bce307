package passkit

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pass-platform/schemas"
	"pass-platform/security"
	"pass-platform/services"

	"github.com/labstack/echo/v5"
)

// Server is the wallet pass web service. It speaks the pass update
// protocol wallet apps expect: device registration, changed-serial
// polling and authenticated pass fetches. It runs on its own port,
// separate from the main API.
type Server struct {
	echo  *echo.Echo
	http  *http.Server
	cards *services.CardService
}

func NewServer(cards *services.CardService, limiter *security.RateLimiter, port string) *Server {
	e := echo.New()

	s := &Server{
		echo:  e,
		cards: cards,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      e,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}

	e.Use(limiter.AntiBotMiddleware())

	v1 := e.Group("/v1", limiter.PassRateLimit())
	v1.POST("/devices/:deviceLibraryIdentifier/registrations/:passTypeIdentifier/:serialNumber", s.registerDevice)
	v1.DELETE("/devices/:deviceLibraryIdentifier/registrations/:passTypeIdentifier/:serialNumber", s.unregisterDevice)
	v1.GET("/devices/:deviceLibraryIdentifier/registrations/:passTypeIdentifier", s.updatedPasses)
	v1.GET("/passes/:passTypeIdentifier/:serialNumber", s.getPass)
	v1.POST("/log", s.storeLogs)

	return s
}

// Start blocks serving the pass web service until the listener fails.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// registerDevice stores the device push token after checking the pass
// auth token for the serial being registered.
func (s *Server) registerDevice(c echo.Context) error {
	if _, ok := s.authorize(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	var req schemas.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := req.Validate(); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	deviceID := c.PathParam("deviceLibraryIdentifier")
	if err := s.cards.RegisterDevice(c.Request().Context(), deviceID, req.PushToken); err != nil {
		log.Printf("passkit: register device %s: %v", deviceID, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) unregisterDevice(c echo.Context) error {
	if _, ok := s.authorize(c); !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	deviceID := c.PathParam("deviceLibraryIdentifier")
	if err := s.cards.UnregisterDevice(c.Request().Context(), deviceID); err != nil {
		log.Printf("passkit: unregister device %s: %v", deviceID, err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusOK)
}

// updatedPasses lists serial numbers changed since the device's last
// poll. 204 means nothing changed.
func (s *Server) updatedPasses(c echo.Context) error {
	since := time.Time{}
	if raw := c.QueryParam("passesUpdatedSince"); raw != "" {
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		since = time.Unix(unix, 0)
	}

	serials, err := s.cards.UpdatedSerialsSince(c.Request().Context(), since)
	if err != nil {
		log.Printf("passkit: updated passes: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	if len(serials) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, schemas.UpdatedPassesResponse{
		SerialNumbers: serials,
		LastUpdated:   strconv.FormatInt(time.Now().Unix(), 10),
	})
}

// getPass serves the current pass content for a serial. Pass bundle
// signing happens client side of this service; the payload here is the
// card's current state.
func (s *Server) getPass(c echo.Context) error {
	serial, ok := s.authorize(c)
	if !ok {
		return c.NoContent(http.StatusUnauthorized)
	}

	card, err := s.cards.GetCardBySerial(c.Request().Context(), serial)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, schemas.MemberCardResponse{
		ID:            card.ID,
		SerialNumber:  card.SerialNumber,
		PersonID:      card.PersonID,
		ApplePassURL:  card.ApplePassURL,
		GooglePassURL: card.GooglePassURL,
		LastUpdated:   card.LastUpdated,
	})
}

func (s *Server) storeLogs(c echo.Context) error {
	var req schemas.LogRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := req.Validate(); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := s.cards.StoreDeviceLogs(c.Request().Context(), req.Logs); err != nil {
		log.Printf("passkit: store logs: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusOK)
}

// authorize checks the ApplePass authorization header against the
// stored token hash for the serial in the path.
func (s *Server) authorize(c echo.Context) (int, bool) {
	serial, err := strconv.Atoi(c.PathParam("serialNumber"))
	if err != nil {
		return 0, false
	}

	header := c.Request().Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "ApplePass ")
	if !found || token == "" {
		return 0, false
	}

	if !s.cards.VerifyPassToken(c.Request().Context(), serial, token) {
		return 0, false
	}
	return serial, true
}
