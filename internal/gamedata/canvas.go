package gamedata

import "errors"

// AreaDef is one region of the digital canvas. The set of areas is fixed;
// players can only inject modules into them.
type AreaDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CanvasFile represents the structure of canvas.json.
type CanvasFile struct {
	Areas []AreaDef `json:"areas"`
}

func (f *CanvasFile) validate() error {
	if len(f.Areas) == 0 {
		return errors.New("canvas has no areas")
	}
	return nil
}

// LoadCanvas loads the canvas layout from the embedded canvas.json file.
func LoadCanvas() ([]AreaDef, error) {
	file, err := Load[CanvasFile]("canvas.json")
	if err != nil {
		return nil, err
	}
	return file.Areas, nil
}
