package middlewares

import (
	"attendly.io/application/interfaces"
	"attendly.io/infrastructure/ipresolver"
	"attendly.io/infrastructure/logger"
)

func IPAddressMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	ctx.SetContextData("IPAddress", clientIP)

	ipLookupRes, err := ipresolver.IPResolverInstance.LookUp(clientIP)
	if err != nil {
		// geo lookup is advisory, the request proceeds without it
		logger.Warning("error looking up ip", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "ip",
			Data: clientIP,
		})
		return ctx, true
	}

	ctx.SetContextData("Latitude", ipLookupRes.Latitude)
	ctx.SetContextData("Longitude", ipLookupRes.Longitude)
	ctx.SetContextData("City", ipLookupRes.City)
	return ctx, true
}
