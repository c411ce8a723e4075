package booking

import (
	"fmt"
	"math/rand"
)

const OrderPrefix = "ORD"

// GenerateOrderNumber returns a client-side order number: the ORD tag
// followed by six random digits. It is not guaranteed unique.
func GenerateOrderNumber() string {
	return fmt.Sprintf("%s%06d", OrderPrefix, rand.Intn(1_000_000))
}
