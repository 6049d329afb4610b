package gamedata

import "errors"

// ArtifactsFile represents the structure of artifacts.json: the items that
// can only be found by observing canvas areas.
type ArtifactsFile struct {
	EndGameItems     []string `json:"endGameItems"`
	ObservationFinds []string `json:"observationFinds"`
}

func (f *ArtifactsFile) validate() error {
	if len(f.EndGameItems) == 0 {
		return errors.New("no end-game items defined")
	}
	return nil
}

// LoadArtifacts loads the observation artifact lists from the embedded artifacts.json file.
func LoadArtifacts() (ArtifactsFile, error) {
	return Load[ArtifactsFile]("artifacts.json")
}
