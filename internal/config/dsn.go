package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the explicit DSN, or one the MySQL driver formats from the
// normalized parts.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.URL != "" {
		return c.URL
	}

	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = c.ParseTime
	if loc, err := time.LoadLocation(c.Loc); err == nil {
		mc.Loc = loc
	}
	mc.Params = map[string]string{"charset": c.Charset}
	for k, v := range c.Params {
		mc.Params[k] = v
	}
	return mc.FormatDSN()
}

// URLValue returns the explicit Redis URL, or one built from the parts in the
// form go-redis ParseURL accepts.
func (c RedisRuntimeConfig) URLValue() string {
	if c.URL != "" {
		return c.URL
	}

	scheme := c.Scheme
	if scheme != "redis" && scheme != "rediss" {
		scheme = "redis"
	}
	db := c.DB
	if db < 0 {
		db = defaultRedisDB
	}
	u := neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(db),
	}
	switch {
	case c.Password != "":
		u.User = neturl.UserPassword(c.Username, c.Password)
	case c.Username != "":
		u.User = neturl.User(c.Username)
	}
	if len(c.Params) > 0 {
		q := neturl.Values{}
		for k, v := range c.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}
