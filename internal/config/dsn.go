package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

func (c *DatabaseConfig) normalize() {
	c.DSN = strings.TrimSpace(c.DSN)
	c.Host = strings.TrimSpace(c.Host)
	c.User = strings.TrimSpace(c.User)
	c.Password = strings.TrimSpace(c.Password)
	c.Name = strings.TrimSpace(c.Name)
	c.Charset = strings.TrimSpace(c.Charset)
	c.Loc = strings.TrimSpace(c.Loc)

	if c.Host == "" {
		c.Host = defaultDBHost
	}
	if c.Port == 0 {
		c.Port = defaultDBPort
	}
	if c.User == "" {
		c.User = defaultDBUser
	}
	if c.Name == "" {
		c.Name = defaultDBName
	}
	if c.Charset == "" {
		c.Charset = defaultDBCharset
	}
	if c.Loc == "" {
		c.Loc = defaultDBLoc
	}
}

// DSNValue returns the MySQL DSN, preferring an explicit dsn over the
// individual fields.
func (c DatabaseConfig) DSNValue() string {
	if c.DSN != "" {
		return c.DSN
	}

	params := neturl.Values{}
	params.Set("charset", c.Charset)
	params.Set("parseTime", "true")
	params.Set("loc", c.Loc)

	auth := c.User
	if c.Password != "" {
		auth += ":" + c.Password
	}

	return fmt.Sprintf("%s@tcp(%s)/%s?%s",
		auth, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name, params.Encode())
}

func (c *RedisConfig) normalize() {
	c.URL = strings.TrimSpace(c.URL)
	if c.URL != "" && !strings.HasPrefix(c.URL, "redis://") && !strings.HasPrefix(c.URL, "rediss://") {
		c.URL = "redis://" + c.URL
	}
	c.Host = strings.TrimSpace(c.Host)
	c.Username = strings.TrimSpace(c.Username)
	c.Password = strings.TrimSpace(c.Password)

	if c.Host == "" && c.URL == "" {
		c.Host = defaultRedisHost
	}
	if c.Port == 0 {
		c.Port = defaultRedisPort
	}
	if c.DB < 0 {
		c.DB = 0
	}
}

// URLValue returns the redis connection URL, preferring an explicit url over
// the individual fields.
func (c RedisConfig) URLValue() string {
	if c.URL != "" {
		return c.URL
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = neturl.UserPassword(c.Username, c.Password)
		} else {
			u.User = neturl.User(c.Username)
		}
	} else if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}
