// Command literedis is the server entry point: parse flags/config, load
// durable state, accept connections, and save/flush on shutdown.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/akashmaji/literedis/internal/config"
	"github.com/akashmaji/literedis/internal/dispatch"
	"github.com/akashmaji/literedis/internal/logging"
	"github.com/akashmaji/literedis/internal/persistence"
	"github.com/akashmaji/literedis/internal/server"
	"github.com/akashmaji/literedis/internal/stats"
	"github.com/akashmaji/literedis/internal/store"
)

const banner = `
 _ _ _                 _ _
| (_) |_ ___ _ _ ___ __| (_)___
| | |  _/ -_) '_/ -_) _  | (_-<
|_|_|\__\___|_| \___\__,_|_/__/
`

func main() {
	os.Exit(run())
}

func run() int {
	fmt.Print(banner)
	log := logging.Default

	var serve bool
	var dir, dbfilename string
	for i := 1; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--serve":
			serve = true
		case "--dir":
			if i+1 < len(os.Args) {
				i++
				dir = os.Args[i]
			}
		case "--dbfilename":
			if i+1 < len(os.Args) {
				i++
				dbfilename = os.Args[i]
			}
		}
	}
	if !serve {
		fmt.Println("usage: literedis --serve [--dir <path>] [--dbfilename <name>]")
		return 0
	}

	cfg, err := config.Load(filepath.Join(".", "redis.conf"))
	if err != nil {
		log.Error("config: %v", err)
		return 1
	}
	if dir != "" {
		cfg.Dir = dir
	}
	if dbfilename != "" {
		cfg.DBFilename = dbfilename
	}
	if err := cfg.EnsureDir(); err != nil {
		log.Error("cannot create data dir %s: %v", cfg.Dir, err)
		return 1
	}

	kv := store.New()
	counters := stats.New()
	ctx := &dispatch.Context{
		Store:    kv,
		Counters: counters,
		Config:   cfg,
	}

	rdb := persistence.NewRDB(cfg.RDBPath(), kv)
	ctx.RDB = rdb
	if err := rdb.Load(); err != nil {
		log.Warn("rdb load: %v", err)
	}

	var aof *persistence.AOF
	if cfg.AofEnabled {
		a, err := persistence.OpenAOF(cfg.AOFPath())
		if err != nil {
			log.Error("aof open: %v", err)
			return 1
		}
		aof = a
		ctx.AOF = aof

		// RDB first, then AOF: avoids resurrecting keys the snapshot
		// already overwrote, per the preferred replay order.
		n, err := persistence.Replay(cfg.AOFPath(), ctx)
		if err != nil {
			log.Warn("aof replay: %v", err)
		} else {
			log.Info("aof: replayed %d records", n)
		}
	}

	srv := server.New(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		srv.Shutdown()
	}()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	err = srv.Serve(addr)

	kv.Mu.Lock()
	if serr := rdb.Save(); serr != nil {
		log.Warn("rdb save on shutdown: %v", serr)
	}
	kv.Mu.Unlock()
	if aof != nil {
		aof.Close()
	}

	if err != nil {
		log.Error("server: %v", err)
		return 1
	}
	return 0
}
