package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a human-readable order code: HR-YYMMDD-XXXX,
// suffix taken from a fresh uuid. Collisions are possible and are handled by
// the unique constraint on orders.order_number plus regeneration.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("HR-%s-%s", time.Now().Format("060102"), suffix)
}
