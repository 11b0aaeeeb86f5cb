package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sebasblancogonz/bulkup/internal/models"
)

func ParsePlanFromTOML(path string) (*models.PlanTOML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan models.PlanTOML
	if err := toml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}
