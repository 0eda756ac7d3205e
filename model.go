package main

import "fmt"

// trackedStatusCodes are the HTTP status codes tallied individually per
// client in the report. All other codes are parsed but not counted.
var trackedStatusCodes = []int{200, 204, 301, 400, 401, 403, 404, 500, 503}

// Connection represents one parsed httpd access log entry
type Connection struct {
	ClientSource   string // IP address or hostname of the requester, used as grouping key
	ClientId       string // identd information; unreliable, see https://httpd.apache.org/docs/2.4/logs.html
	UserId         string // authenticated user, only present for password-protected resources
	Timestamp      string // raw timestamp text, surrounding brackets stripped
	HttpMethod     string // e.g. GET
	RequestUri     string // e.g. /myawesomepage.php
	HttpVersion    string // e.g. HTTP/1.1
	HttpStatusCode int    // status code returned to the client
	ResponseSize   int64  // response size in bytes w/o headers; 0 when logged as "-"
}

// String returns a formatted string representation of Connection
func (c *Connection) String() string {
	return fmt.Sprintf("Client:%-15s | TS:%s | %s %s %s | Status:%d | Size:%d",
		c.ClientSource, c.Timestamp, c.HttpMethod, c.RequestUri, c.HttpVersion,
		c.HttpStatusCode, c.ResponseSize)
}
