package logsvc

import (
	"log"
	"os"

	"github.com/trezcool/masomo-portal/core"
)

func newStdLogger(conf *core.Config) *log.Logger {
	return log.New(os.Stderr, conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
}
