package ipresolver

import (
	"attendly.io/infrastructure/ipresolver/maxmind"
	"attendly.io/infrastructure/ipresolver/types"
)

var IPResolverInstance types.IPResolver = &maxmind.MaxMindIPResolver{}
