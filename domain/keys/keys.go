package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxSale is used for prefixing cached sale entries
	PfxSale = "sale"
	// PfxMarketConfig is used for prefixing the cached marketplace config
	PfxMarketConfig = "marketConfig"
)

// CustomKey is used to join the customized key by components with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by components
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key for metric tagging
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
