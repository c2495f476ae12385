package db

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// gormWriter sends the gorm log lines through zerolog.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	log.Debug().Str("component", "gorm").Msg(msg)
}
