// Package useragent derives coarse client categories from a raw User-Agent header.
//
// Matching is substring based and ordered. Several tokens overlap between
// families (Chrome user agents carry "Safari", Edge carries "Chrome", iOS
// carries "Mac OS X"), so each rule list is evaluated top to bottom and the
// first match wins.
package useragent

import "strings"

// Device labels.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// Browser labels.
const (
	BrowserChrome  = "Chrome"
	BrowserSafari  = "Safari"
	BrowserFirefox = "Firefox"
	BrowserEdge    = "Edge"
	BrowserIE      = "IE"
)

// OS labels.
const (
	OSWindows = "Windows"
	OSMacOS   = "macOS"
	OSIOS     = "iOS"
	OSAndroid = "Android"
	OSLinux   = "Linux"
)

// Unknown is used for browser and OS when no rule matches.
const Unknown = "unknown"

// Classification is the (device, browser, os) triple of a client.
type Classification struct {
	Device  string `json:"device"`
	Browser string `json:"browser"`
	OS      string `json:"os"`
}

type rule struct {
	label string
	match func(ua string) bool
}

var (
	mobileSignals = []string{"Mobile", "Android", "iPhone", "iPad"}
	tabletSignals = []string{"iPad", "Tablet"}
	iosSignals    = []string{"iPhone", "iPad"}
)

var browserRules = []rule{
	{BrowserChrome, func(ua string) bool { return strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Edg") }},
	{BrowserSafari, func(ua string) bool { return strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome") }},
	{BrowserFirefox, func(ua string) bool { return strings.Contains(ua, "Firefox") }},
	{BrowserEdge, func(ua string) bool { return strings.Contains(ua, "Edg") }},
	{BrowserIE, func(ua string) bool { return containsAny(ua, "MSIE", "Trident") }},
}

var osRules = []rule{
	{OSWindows, func(ua string) bool { return strings.Contains(ua, "Windows") }},
	{OSMacOS, func(ua string) bool { return strings.Contains(ua, "Mac OS X") && !containsAny(ua, iosSignals...) }},
	{OSIOS, func(ua string) bool { return containsAny(ua, iosSignals...) }},
	{OSAndroid, func(ua string) bool { return strings.Contains(ua, "Android") }},
	{OSLinux, func(ua string) bool { return strings.Contains(ua, "Linux") }},
}

// Classify never fails: an empty or unrecognised string yields desktop/unknown/unknown.
func Classify(ua string) Classification {
	return Classification{
		Device:  classifyDevice(ua),
		Browser: firstMatch(browserRules, ua),
		OS:      firstMatch(osRules, ua),
	}
}

func classifyDevice(ua string) string {
	if !containsAny(ua, mobileSignals...) {
		return DeviceDesktop
	}
	if containsAny(ua, tabletSignals...) {
		return DeviceTablet
	}
	return DeviceMobile
}

func firstMatch(rules []rule, ua string) string {
	for _, r := range rules {
		if r.match(ua) {
			return r.label
		}
	}
	return Unknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
