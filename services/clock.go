package services

import "time"

// nowFunc is swapped out by tests that need to pin the clock.
var nowFunc = time.Now
