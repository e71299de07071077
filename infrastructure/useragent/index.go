package useragent

import "github.com/mileusna/useragent"

type UserAgent struct {
	Bot       bool
	OS        string
	OSVersion string
	Device    string
	Name      string
	Mobile    bool
}

func ParseUserAgent(userAgent string) *UserAgent {
	parsed := useragent.Parse(userAgent)
	return &UserAgent{
		Bot:       parsed.Bot,
		OS:        parsed.OS,
		OSVersion: parsed.VersionNoFull(),
		Device:    parsed.Device,
		Name:      parsed.Name,
		Mobile:    parsed.Mobile,
	}
}
