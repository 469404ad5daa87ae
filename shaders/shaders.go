package shaders

import (
	_ "embed"
)

//go:embed snowflake.wgsl
var SnowflakeWGSL string
