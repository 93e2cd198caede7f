package inventory

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

const (
	headerVersion2 = "# Sphinx inventory version 2"
	headerProject  = "# Project: "
	headerVersion  = "# Version: "
	headerZlib     = "# The remainder of this file is compressed using zlib."
)

// name domain:role priority uri dispname; names may contain spaces.
var objectLine = regexp.MustCompile(`^(.+?)\s+(\S+?):(\S+)\s+(-?\d+)\s+(\S*)\s+(.*)$`)

// Parse decodes a version 2 inventory. baseURL is recorded so that object
// URIs can be made absolute.
func Parse(r io.Reader, baseURL string) (*Inventory, error) {
	br := bufio.NewReader(r)

	first, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	if first != headerVersion2 {
		if strings.HasPrefix(first, "# Sphinx inventory version") {
			return nil, errors.InventoryError("unsupported inventory version").
				WithContext("header", first).
				Build()
		}
		return nil, errors.InventoryError("not a Sphinx inventory").Build()
	}

	project, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	version, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	marker, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(project, headerProject) || !strings.HasPrefix(version, headerVersion) || !strings.Contains(marker, "zlib") {
		return nil, errors.InventoryError("malformed inventory header").Build()
	}

	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInventory, "invalid compressed inventory body").Build()
	}
	defer func() { _ = zr.Close() }()

	objects, err := parseObjects(zr)
	if err != nil {
		return nil, err
	}
	return New(strings.TrimPrefix(project, headerProject), strings.TrimPrefix(version, headerVersion), baseURL, objects), nil
}

func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInventory, "truncated inventory header").Build()
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func parseObjects(r io.Reader) ([]Object, error) {
	var objects []Object
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := objectLine.FindStringSubmatch(line)
		if m == nil {
			// Sphinx itself skips lines it cannot parse.
			continue
		}
		prio, err := strconv.Atoi(m[4])
		if err != nil {
			continue
		}
		o := Object{Name: m[1], Domain: m[2], Role: m[3], Priority: prio, URI: m[5], DispName: m[6]}
		if strings.HasSuffix(o.URI, "$") {
			o.URI = strings.TrimSuffix(o.URI, "$") + o.Name
		}
		if o.DispName == "-" {
			o.DispName = o.Name
		}
		objects = append(objects, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInventory, "failed to read inventory body").Build()
	}
	return objects, nil
}

// Encode writes inv in version 2 format, applying the same abbreviations
// Sphinx uses ("$" for an anchor equal to the name, "-" for an unchanged
// display name).
func Encode(w io.Writer, inv *Inventory) error {
	var head bytes.Buffer
	fmt.Fprintln(&head, headerVersion2)
	fmt.Fprintln(&head, headerProject+inv.Project)
	fmt.Fprintln(&head, headerVersion+inv.Version)
	fmt.Fprintln(&head, headerZlib)
	if _, err := w.Write(head.Bytes()); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write inventory header").Build()
	}

	zw := zlib.NewWriter(w)
	for _, o := range inv.Objects {
		uri := o.URI
		if strings.HasSuffix(uri, "#"+o.Name) {
			uri = strings.TrimSuffix(uri, o.Name) + "$"
		}
		disp := o.DispName
		if disp == "" || disp == o.Name {
			disp = "-"
		}
		if _, err := fmt.Fprintf(zw, "%s %s %d %s %s\n", o.Name, o.Key(), o.Priority, uri, disp); err != nil {
			_ = zw.Close()
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write inventory entry").Build()
		}
	}
	if err := zw.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to finish inventory").Build()
	}
	return nil
}
