// utils/codes.go
package utils

import (
	"fmt"
	"time"
)

func GenCooperativeNumber(seq int64, t time.Time) string {
	return fmt.Sprintf("KOP-%d-%06d", t.Year(), seq)
}

func GenOrderNumber(seq int64, t time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", t.Format("20060102"), seq)
}
