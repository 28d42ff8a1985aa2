package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh entity id of the form <prefix>-<unix millis>-<suffix>.
// The random suffix keeps rapid successive calls from colliding.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
