package epubdoc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// container is the parsed META-INF/container.xml, which points at the
// package document.
type container struct {
	Rootfiles []rootfile `xml:"rootfiles>rootfile"`
}

type rootfile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// packageDoc is the parsed OPF package: metadata plus the manifest and
// spine that together give the reading order.
type packageDoc struct {
	Metadata struct {
		Title    string `xml:"title"`
		Language string `xml:"language"`
		Creator  string `xml:"creator"`
	} `xml:"metadata"`
	Manifest struct {
		Items []manifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Itemrefs []itemref `xml:"itemref"`
	} `xml:"spine"`
}

type manifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type itemref struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// findOPF locates the package document via container.xml
func findOPF(zr *zip.Reader) (string, error) {
	data, err := readFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", fmt.Errorf("epub: missing container.xml: %w", err)
	}
	var c container
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("epub: parsing container.xml: %w", err)
	}
	for _, rf := range c.Rootfiles {
		if rf.MediaType == "application/oebps-package+xml" && rf.FullPath != "" {
			return rf.FullPath, nil
		}
	}
	return "", fmt.Errorf("epub: container.xml names no package document")
}

// parseOPF reads the package document and returns it with the directory
// all manifest hrefs resolve against.
func parseOPF(zr *zip.Reader, opfPath string) (*packageDoc, string, error) {
	data, err := readFile(zr, opfPath)
	if err != nil {
		return nil, "", fmt.Errorf("epub: missing package document: %w", err)
	}
	var pkg packageDoc
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, "", fmt.Errorf("epub: parsing package document: %w", err)
	}
	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}
	return &pkg, baseDir, nil
}

// chapterPaths returns the archive paths of the linear spine chapters
// that the manifest marks as HTML content, in reading order.
func (p *packageDoc) chapterPaths(baseDir string) []string {
	byID := make(map[string]manifestItem, len(p.Manifest.Items))
	for _, item := range p.Manifest.Items {
		byID[item.ID] = item
	}

	var paths []string
	for _, ref := range p.Spine.Itemrefs {
		if ref.Linear == "no" {
			continue
		}
		item, ok := byID[ref.IDRef]
		if !ok || !isHTMLMediaType(item.MediaType) {
			continue
		}
		href := item.Href
		if unescaped, err := url.PathUnescape(href); err == nil {
			href = unescaped
		}
		if baseDir != "" {
			href = path.Join(baseDir, href)
		}
		paths = append(paths, href)
	}
	return paths
}

func isHTMLMediaType(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "application/xhtml+xml", "text/html":
		return true
	}
	return false
}

// readFile returns the contents of one archive member
func readFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file %q not in archive", name)
}
