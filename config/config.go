package config

import "time"

// Config is parsed by ardanlabs/conf from flags and CART_* environment
// variables.
type Config struct {
	Web     Web
	Session Session
	Rate    Rate
	Cors    Cors
	Log     Log
	Cart    Cart
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Session struct {
	Lifetime    time.Duration `conf:"default:720h"`
	IdleTimeout time.Duration `conf:"default:0s"`
	CookieName  string        `conf:"default:cart_session"`
	Secure      bool          `conf:"default:false"`
}

type Rate struct {
	Burst    int           `conf:"default:20"`
	Interval time.Duration `conf:"default:100ms"`
	// Minutes a client's bucket survives without requests.
	Expiry int `conf:"default:3"`
}

type Cors struct {
	Origin string
}

type Log struct {
	Level string `conf:"default:info"`
}

type Cart struct {
	StorageKey string `conf:"default:cart"`
}
