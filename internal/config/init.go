package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
)

const exampleConfig = `# pagebuilder site configuration
content_dir: content
templates_dir: templates
output_dir: public
output_ext: .html
continue_on_error: false
template_cache: false

markdown:
  gfm: true
  unsafe_html: false

content:
  require_front_matter: false
  derive_title: true

collections:
  posts:
    folder: posts
    sort_by: date
    descending: true

pages:
  - output: index
    node:
      template: base
      child:
        template: index
        collections: [posts]
        context:
          heading: ${SITE_TITLE}

folders:
  - folder: posts
    node:
      template: base
      child:
        template: post
`

// Init writes an example configuration file to path. An existing file is
// only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return berrors.New(berrors.CategoryConfig, berrors.SeverityFatal,
			"configuration file already exists (use --force to overwrite)").WithContext("path", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to stat config file").
			WithContext("path", path)
	}
	if err := atomic.WriteFile(path, strings.NewReader(exampleConfig)); err != nil {
		return berrors.OutputWrite(path, err)
	}
	return nil
}
