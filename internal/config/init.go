package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

// Defaults written by Init.
const (
	DefaultSourceDir = "source"
	DefaultOutputDir = "website"
	DefaultServeDir  = "website"
	DefaultConverter = "emacs_org2html"
)

// DefaultHeader is prepended to every org document before conversion.
const DefaultHeader = `#+AUTHOR: rvgswg

#+OPTIONS: html-style:nil
#+OPTIONS: html-scripts:nil

#+OPTIONS: author:nil
#+OPTIONS: email:nil
#+OPTIONS: date:nil
#+OPTIONS: toc:nil

#+PROPERTY: header-args :eval no

#+HTML_HEAD: <link rel="stylesheet" type="text/css" href="/style.css"/>

`

// DefaultFooter is appended to every org document; {{date}} is resolved per file.
const DefaultFooter = `
* FOOTER                                                                :ignore:
:PROPERTIES:
:clearpage: t
:END:
#+BEGIN_EXPORT html
<hr>
<footer>
  <div class="container">
    <ul class="menu-list">
      <li class="menu-list-item flex-basis-100-margin fit-content">
        <a href="/index.html">Home</a>
      </li>
      <li class="menu-list-item flex-basis-100-margin fit-content">
        <a href="/articles/articles.html">Articles</a>
      </li>
      <li class="menu-list-item flex-basis-100-margin fit-content">
        <a class="inactive-link">{{date}}</a>
      </li>
    </ul>
  </div>
</footer>
#+END_EXPORT
`

type orgModeDefaults struct {
	Binary string `json:"binary"`
	Header string `json:"header"`
	Footer string `json:"footer"`
}

// Init writes a default marker file at path plus a default conversion
// descriptor next to it. It refuses to overwrite an existing marker; an
// existing descriptor is left alone.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.ConfigError("directory already initialized").
			WithContext("path", path).
			Build()
	}

	m := marker{
		WebsiteSource: DefaultSourceDir,
		WebsiteOutput: DefaultOutputDir,
		WebsiteServe:  DefaultServeDir,
		Features: map[string]bool{
			string(FeatureOrgMode):  true,
			string(FeatureArticles): false,
			string(FeatureRSS):      false,
		},
	}
	if err := writeJSON(path, m); err != nil {
		return err
	}

	descriptor := filepath.Join(filepath.Dir(path), defaultDescriptors[FeatureOrgMode])
	if _, err := os.Stat(descriptor); err == nil {
		return nil
	}
	return writeJSON(descriptor, orgModeDefaults{
		Binary: DefaultConverter,
		Header: DefaultHeader,
		Footer: DefaultFooter,
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "cannot encode file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
