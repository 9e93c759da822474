package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/unklstewy/shipcommand/internal/auth"
	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/config"
	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/vesselclass"
)

type fixture struct {
	world  *sim.World
	ids    map[string]string
	server *Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.DefaultConfig()
	world := sim.NewWorld(cfg.Simulation, logging.Discard())
	ids, err := world.Spawn(cfg.Fleet, vesselclass.Default())
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	world.Advance(0)

	hash, err := bcrypt.GenerateFromPassword([]byte("anchors-aweigh"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	authSvc := auth.NewService(auth.Config{
		JWTSecret: "test-secret",
		Operators: []config.OperatorConfig{
			{Username: "captain", PasswordHash: string(hash), Role: auth.RoleCommander},
			{Username: "lookout", PasswordHash: string(hash), Role: auth.RoleObserver},
		},
	})

	return &fixture{
		world:  world,
		ids:    ids,
		server: NewServer(world, authSvc, logging.Discard(), Options{}),
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T, username string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "anchors-aweigh",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login failed with %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	return resp.Token
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp map[string]interface{}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["status"] != "ok" || resp["vessels"] != float64(3) {
		t.Errorf("Unexpected health response %v", resp)
	}
}

func TestGetVehicles(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/vehicles", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var frame Frame
	if err := json.NewDecoder(rec.Body).Decode(&frame); err != nil {
		t.Fatalf("Failed to decode frame: %v", err)
	}
	if len(frame.Vessels) != 3 {
		t.Fatalf("Expected 3 vessels, got %d", len(frame.Vessels))
	}

	t.Run("By id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/vehicles/"+f.ids["Espora"], "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var v Vessel
		json.NewDecoder(rec.Body).Decode(&v)
		if v.Name != "Espora" || v.Class != "frigate" {
			t.Errorf("Unexpected vessel %+v", v)
		}
		if v.SpeedKnots < 11.9 || v.SpeedKnots > 12.1 {
			t.Errorf("Expected about 12 kt, got %f", v.SpeedKnots)
		}
	})

	t.Run("Unknown id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/vehicles/nope", "", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

func TestIntercept(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/vehicles/"+f.ids["Espora"]+"/intercept/"+f.ids["Indomita"], "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]json.RawMessage
	json.NewDecoder(rec.Body).Decode(&resp)
	if _, ok := resp["closest_approach"]; !ok {
		t.Error("Expected closest_approach in response")
	}
	_, crossing := resp["crossing"]
	_, crossingErr := resp["crossing_error"]
	if crossing == crossingErr {
		t.Errorf("Expected exactly one of crossing and crossing_error, got %v", resp)
	}

	rec = f.do(t, http.MethodGet, "/api/v1/vehicles/"+f.ids["Espora"]+"/intercept/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown target, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"Valid", map[string]string{"username": "captain", "password": "anchors-aweigh"}, http.StatusOK},
		{"Wrong password", map[string]string{"username": "captain", "password": "nope"}, http.StatusUnauthorized},
		{"Unknown user", map[string]string{"username": "stowaway", "password": "anchors-aweigh"}, http.StatusUnauthorized},
		{"Malformed", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", tt.body)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

// beacon is a fixed participant with no controls.
type beacon struct{}

func (beacon) Step(float64) {}

func (beacon) Snapshot() kinematics.Snapshot {
	return kinematics.Snapshot{Name: "Beacon", Position: geo.NewPosition3D(-38, -57, magnitudes.Meters(0))}
}

func TestSetControls(t *testing.T) {
	f := newFixture(t)
	commander := f.login(t, "captain")
	observer := f.login(t, "lookout")
	path := "/api/v1/vehicles/" + f.ids["Espora"] + "/controls"
	beaconID := f.world.Add(beacon{})
	f.world.Advance(0)
	body := map[string]float64{"throttle": 1, "rudder": 0.5}

	tests := []struct {
		name   string
		path   string
		token  string
		body   interface{}
		status int
	}{
		{"No token", path, "", body, http.StatusUnauthorized},
		{"Bad token", path, "garbage", body, http.StatusUnauthorized},
		{"Observer", path, observer, body, http.StatusForbidden},
		{"Unknown vehicle", "/api/v1/vehicles/nope/controls", commander, body, http.StatusNotFound},
		{"Not steerable", "/api/v1/vehicles/" + beaconID + "/controls", commander, body, http.StatusConflict},
		{"Malformed", path, commander, "{", http.StatusBadRequest},
		{"Commander", path, commander, body, http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tt.path, tt.token, tt.body)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	f.world.Advance(1)
	v, _ := f.world.Snapshot().Vehicle(f.ids["Espora"])
	if v.Throttle != 1 || v.Rudder != 0.5 {
		t.Errorf("Expected throttle 1 and rudder 0.5, got %f %f", v.Throttle, v.Rudder)
	}
}

func TestPauseResume(t *testing.T) {
	f := newFixture(t)
	token := f.login(t, "captain")

	if rec := f.do(t, http.MethodPost, "/api/v1/sim/pause", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("Pause returned %d", rec.Code)
	}
	if !f.world.Paused() {
		t.Error("Expected world to be paused")
	}
	if rec := f.do(t, http.MethodPost, "/api/v1/sim/resume", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("Resume returned %d", rec.Code)
	}
	if f.world.Paused() {
		t.Error("Expected world to be running")
	}
	if rec := f.do(t, http.MethodPost, "/api/v1/sim/pause", f.login(t, "lookout"), nil); rec.Code != http.StatusForbidden {
		t.Errorf("Expected observer pause to be forbidden, got %d", rec.Code)
	}
}

func TestWebSocket(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("Failed to read frame: %v", err)
	}
	if len(frame.Vessels) != 3 {
		t.Errorf("Expected 3 vessels, got %d", len(frame.Vessels))
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://bridge.local"})

	tests := []struct {
		origin string
		ok     bool
	}{
		{"", true},
		{"http://bridge.local", true},
		{"http://evil.example", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := check(req); got != tt.ok {
			t.Errorf("origin %q: expected %v, got %v", tt.origin, tt.ok, got)
		}
	}
}
