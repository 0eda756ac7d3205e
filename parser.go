package main

import (
	"errors"
	"fmt"
	"strings"
)

// httpVersionMarker is the substring a line must contain before it is
// considered a parse candidate at all.
const httpVersionMarker = "HTTP/1.1"

var (
	errNoTimestamp  = errors.New("no bracketed timestamp")
	errNoRequest    = errors.New("no quoted request")
	errShortRequest = errors.New("quoted request has fewer than three tokens")
	errNoStatusCode = errors.New("line ends before status code")
)

// ParseConnection parses a single access log line in the common/combined
// format ("%h %l %u %t \"%r\" %>s %b") into a Connection.
//
// The line is consumed in named stages (source, identity, user, timestamp,
// request, status, size); the first stage that fails discards the whole
// line. Partial records are never returned.
func ParseConnection(line string) (Connection, error) {
	var conn Connection
	var err error

	rest := line
	if conn.ClientSource, rest, err = nextToken(rest, "client source"); err != nil {
		return Connection{}, err
	}
	if conn.ClientId, rest, err = nextToken(rest, "client id"); err != nil {
		return Connection{}, err
	}
	if conn.UserId, rest, err = nextToken(rest, "user id"); err != nil {
		return Connection{}, err
	}

	// Bracketed timestamp; the brackets are not part of the value.
	open := strings.IndexByte(rest, '[')
	if open < 0 {
		return Connection{}, errNoTimestamp
	}
	length := strings.IndexByte(rest[open+1:], ']')
	if length < 0 {
		return Connection{}, errNoTimestamp
	}
	conn.Timestamp = rest[open+1 : open+1+length]
	rest = rest[open+1+length+1:]

	// Quoted request following the timestamp.
	open = strings.IndexByte(rest, '"')
	if open < 0 {
		return Connection{}, errNoRequest
	}
	length = strings.IndexByte(rest[open+1:], '"')
	if length < 0 {
		return Connection{}, errNoRequest
	}
	request := rest[open+1 : open+1+length]
	rest = rest[open+1+length+1:]

	tokens := strings.Fields(request)
	if len(tokens) < 3 {
		return Connection{}, errShortRequest
	}
	conn.HttpMethod = tokens[0]
	conn.RequestUri = tokens[1]
	conn.HttpVersion = tokens[2]

	// Status code and response size. Both use lenient atoi-style
	// conversion; a size of "-" becomes 0 rather than an error.
	fields := strings.Fields(rest)
	if len(fields) < 1 {
		return Connection{}, errNoStatusCode
	}
	conn.HttpStatusCode = int(leadingInt(fields[0]))
	if len(fields) > 1 {
		conn.ResponseSize = leadingInt(fields[1])
	}

	return conn, nil
}

// nextToken splits one whitespace-delimited token off the front of s.
func nextToken(s, stage string) (token, rest string, err error) {
	s = strings.TrimLeft(s, " \t")
	idx := strings.IndexAny(s, " \t")
	if idx <= 0 {
		return "", "", fmt.Errorf("%s: missing token", stage)
	}
	return s[:idx], s[idx+1:], nil
}

// leadingInt converts the leading decimal digits of s to an int64,
// mirroring atoi semantics: conversion stops at the first non-digit and a
// string with no leading digits yields 0.
func leadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	var n int64
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		n = n*10 + int64(s[i]-'0')
	}
	return n
}
