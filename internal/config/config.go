package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/excel-azmin/roomcal/internal/ews"
)

// Config captures the environment-driven runtime configuration.
type Config struct {
	EWS ews.Config

	// RoomsFile is the path to the YAML room inventory used by batch
	// commands. Empty means no inventory configured.
	RoomsFile string
}

// Load reads configuration from the process environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over file entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		EWS: ews.Config{
			Host:     strings.TrimSpace(os.Getenv("EXCHANGE_HOST")),
			AuthType: ews.AuthNTLM,
			Credential: ews.Credential{
				Username: os.Getenv("EXCHANGE_USERNAME"),
				Password: os.Getenv("EXCHANGE_PASSWORD"),
			},
			OAuth: ews.OAuthConfig{
				ClientID:     os.Getenv("EXCHANGE_OAUTH_CLIENT_ID"),
				TenantID:     os.Getenv("EXCHANGE_OAUTH_TENANT_ID"),
				ClientSecret: os.Getenv("EXCHANGE_OAUTH_CLIENT_SECRET"),
			},
		},
		RoomsFile: strings.TrimSpace(os.Getenv("ROOMCAL_ROOMS_FILE")),
	}

	if authType := strings.TrimSpace(os.Getenv("EXCHANGE_AUTH_TYPE")); authType != "" {
		switch ews.AuthType(authType) {
		case ews.AuthNTLM, ews.AuthBasic, ews.AuthOAuth2:
			cfg.EWS.AuthType = ews.AuthType(authType)
		default:
			return Config{}, fmt.Errorf("invalid EXCHANGE_AUTH_TYPE %q: must be ntlm, basic or oauth2", authType)
		}
	}

	if maxConns := strings.TrimSpace(os.Getenv("EXCHANGE_MAX_CONNECTIONS")); maxConns != "" {
		n, err := strconv.Atoi(maxConns)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid EXCHANGE_MAX_CONNECTIONS %q: must be a non-negative integer", maxConns)
		}
		cfg.EWS.MaxConnections = n
	}

	if insecure := strings.TrimSpace(os.Getenv("EXCHANGE_INSECURE_TLS")); insecure != "" {
		v, err := strconv.ParseBool(insecure)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EXCHANGE_INSECURE_TLS %q: must be a boolean", insecure)
		}
		cfg.EWS.InsecureTLS = v
	}

	if cfg.EWS.Host == "" && cfg.EWS.AuthType != ews.AuthOAuth2 {
		return Config{}, fmt.Errorf("EXCHANGE_HOST is not set")
	}
	if cfg.EWS.Host == "" {
		// Exchange Online has a fixed endpoint.
		cfg.EWS.Host = "outlook.office365.com"
	}

	return cfg, nil
}

// Room is one bookable room from the inventory file.
type Room struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// Rooms is the YAML room inventory.
type Rooms struct {
	Rooms []Room `yaml:"rooms"`
}

// LoadRooms reads the room inventory from path.
func LoadRooms(path string) (Rooms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rooms{}, fmt.Errorf("reading rooms file: %w", err)
	}
	var rooms Rooms
	if err := yaml.Unmarshal(data, &rooms); err != nil {
		return Rooms{}, fmt.Errorf("parsing rooms file %s: %w", path, err)
	}
	if len(rooms.Rooms) == 0 {
		return Rooms{}, fmt.Errorf("rooms file %s lists no rooms", path)
	}
	for i, room := range rooms.Rooms {
		if room.Email == "" {
			return Rooms{}, fmt.Errorf("rooms file %s: entry %d has no email", path, i+1)
		}
	}
	return rooms, nil
}

// Addresses returns the room mailbox addresses in file order.
func (r Rooms) Addresses() []string {
	addresses := make([]string, len(r.Rooms))
	for i, room := range r.Rooms {
		addresses[i] = room.Email
	}
	return addresses
}
