package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
}

func (s stubFeature) Name() string    { return s.name }
func (s stubFeature) IsEnabled() bool { return s.enabled }
func (s stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	mgr := NewManager(zap.NewNop())
	mgr.Register(stubFeature{name: "on", enabled: true})
	mgr.Register(stubFeature{name: "off", enabled: false})

	require.NoError(t, mgr.LoadAll(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/on", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/off", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAllError(t *testing.T) {
	mgr := NewManager(zap.NewNop())
	mgr.Register(stubFeature{name: "broken", enabled: true, err: errors.New("bad route")})

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
}
