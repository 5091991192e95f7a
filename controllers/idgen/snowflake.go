package idgen

import (
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init creates the snowflake node. GenerateID also lazily initializes, so
// calling Init from main is only needed to fail fast on startup.
func Init() {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
	})
}

// GenerateID returns a new surrogate ID for history and payment rows.
func GenerateID() int64 {
	Init()
	return node.Generate().Int64()
}
