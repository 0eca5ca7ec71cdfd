package scaffold

import "github.com/tidwall/pretty"

// fixtureRaw is the canned manifest returned in fixture mode, so the rest of
// the application can be exercised without invoking real scaffolding tools.
const fixtureRaw = `{
  "name": "sample-app",
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "react": "^16.4.1",
    "react-dom": "^16.4.1",
    "react-scripts": "1.1.4"
  },
  "scripts": {
    "start": "react-scripts start",
    "build": "react-scripts build",
    "test": "react-scripts test --env=jsdom",
    "eject": "react-scripts eject"
  },
  "guppy": {
    "id": "sample-app",
    "name": "Sample App",
    "type": "create-react-app",
    "icon": "",
    "color": "#F44336",
    "createdAt": "2018-06-14T00:00:00Z"
  }
}
`

// fixtureManifest builds the canned manifest object.
func fixtureManifest() *Manifest {
	return &Manifest{
		Raw: pretty.PrettyOptions([]byte(fixtureRaw), prettyOpts),
		Guppy: Metadata{
			ID:        "sample-app",
			Name:      "Sample App",
			Type:      TypeCreateReactApp,
			Icon:      "",
			Color:     "#F44336",
			CreatedAt: "2018-06-14T00:00:00Z",
		},
	}
}
