// Package mongo connects to MongoDB with retries and exposes a readiness check.
//
// Atlas clusters can take several seconds to accept connections after a cold
// start, so New retries the connect-and-ping sequence before giving up:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	health.Readiness(log, mongo.Healthcheck(db.Client()))
//
// Settings (environment):
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: travelcraft)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
package mongo
