// Copyright 2009 The XGB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xgb

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// As per /usr/include/X11/Xauth.h.
const (
	familyLocal = 256
	familyWild  = 65535
)

// authEntry is one record of an Xauthority file.
type authEntry struct {
	family  uint16
	address string
	display string
	name    string
	data    []byte
}

func getU16BE(r io.Reader, b []byte) (uint16, error) {
	_, err := io.ReadFull(r, b[0:2])
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 + uint16(b[1]), nil
}

func getBytes(r io.Reader, b []byte) ([]byte, error) {
	n, err := getU16BE(r, b)
	if err != nil {
		return nil, err
	}
	if int(n) > len(b) {
		return nil, errors.New("bytes too long for buffer")
	}
	_, err = io.ReadFull(r, b[0:n])
	if err != nil {
		return nil, err
	}
	return b[0:n], nil
}

// readAuthEntry reads the next record. b is scratch space that must hold
// the longest field.
func readAuthEntry(r io.Reader, b []byte) (authEntry, error) {
	var e authEntry
	var err error
	if e.family, err = getU16BE(r, b); err != nil {
		return e, err
	}
	fields := []*string{&e.address, &e.display, &e.name}
	for _, f := range fields {
		s, err := getBytes(r, b)
		if err != nil {
			return e, errors.Wrap(err, "truncated Xauthority entry")
		}
		*f = string(s)
	}
	data, err := getBytes(r, b)
	if err != nil {
		return e, errors.Wrap(err, "truncated Xauthority entry")
	}
	e.data = append([]byte(nil), data...)
	return e, nil
}

func (e authEntry) matches(hostname, display string) bool {
	if e.display != display {
		return false
	}
	return e.family == familyWild ||
		(e.family == familyLocal && e.address == hostname)
}

// authorityFile names the Xauthority file to read.
func authorityFile() (string, error) {
	if fname := os.Getenv("XAUTHORITY"); len(fname) != 0 {
		return fname, nil
	}
	home := os.Getenv("HOME")
	if len(home) == 0 {
		return "", errors.New("Xauthority not found: $XAUTHORITY, $HOME not set")
	}
	return filepath.Join(home, ".Xauthority"), nil
}

// readAuthority reads the X authority file for the DISPLAY.
// If hostname == "" or hostname == "localhost",
// readAuthority uses the system's hostname (as returned by os.Hostname) instead.
func readAuthority(hostname, display string) (name string, data []byte, err error) {
	if len(hostname) == 0 || hostname == "localhost" {
		hostname, err = os.Hostname()
		if err != nil {
			return "", nil, err
		}
	}

	fname, err := authorityFile()
	if err != nil {
		return "", nil, err
	}
	r, err := os.Open(fname)
	if err != nil {
		return "", nil, err
	}
	defer r.Close()

	return findAuthority(bufio.NewReader(r), hostname, display)
}

func findAuthority(r io.Reader, hostname, display string) (string, []byte, error) {
	// b is a scratch buffer to use and should be at least 256 bytes long
	// (i.e. it should be able to hold a hostname).
	var b [256]byte
	for {
		e, err := readAuthEntry(r, b[:])
		if err == io.EOF {
			return "", nil, errors.Errorf("no Xauthority entry for display %s", display)
		}
		if err != nil {
			return "", nil, err
		}
		if e.matches(hostname, display) {
			return e.name, e.data, nil
		}
	}
}
