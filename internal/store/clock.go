package store

import "time"

// now is the event clock; tests replace it to control timestamps.
var now = func() time.Time { return time.Now().UTC() }
