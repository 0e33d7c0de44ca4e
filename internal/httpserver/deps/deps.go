package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hiredeck/hiredeck/internal/httpserver/mw"
	"github.com/hiredeck/hiredeck/internal/index"
	"github.com/hiredeck/hiredeck/internal/logger"
	filestore "github.com/hiredeck/hiredeck/internal/store/file"
	redisstore "github.com/hiredeck/hiredeck/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	MemoryIndex *index.MemoryIndex // read path for all queries
	Store       *filestore.Store   // write path for admin mutations
	Cache       *redisstore.Store  // query cache + run stats (nil = disabled)
	RedisClient *redis.Client      // for infra health checks

	QueryCacheTTL time.Duration

	AllowedHosts []string // Host headers allowed on admin endpoints
	AllowedCIDRS []string // IPs/CIDRs allowed on admin endpoints
	TrustProxy   bool     // true behind a trusted reverse proxy

	RateLimit mw.RateLimitConfig // public endpoint throttling

	IngestTrigger chan struct{} // forces an immediate ingestion cycle
}
