package cache

import (
	"sync"
	"time"
)

type Cache struct {
	storage sync.Map
}

type entry struct {
	value any
	timer *time.Timer
}

type counter struct {
	mu      sync.Mutex
	n       int
	resetAt time.Time
}
