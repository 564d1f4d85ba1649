package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// SceneSchema returns the JSON schema of scene files.
func SceneSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Scene{})
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(SceneSchema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding scene schema")
	}
	printf(c.App.Writer, "%s", data)
	return nil
}
