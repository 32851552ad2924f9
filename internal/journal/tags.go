package journal

import (
	"strings"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/models"
)

// AllTags lists the default tags followed by the user's custom tags.
func AllTags(settings models.AppSettings) []string {
	tags := make([]string, 0, len(constants.DefaultTags)+len(settings.CustomTags))
	tags = append(tags, constants.DefaultTags...)
	return append(tags, settings.CustomTags...)
}

// AddCustomTag appends tag to the custom tags. It reports false without
// writing when the tag is blank or already known.
func (s *Service) AddCustomTag(tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, nil
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return false, err
	}
	if settings.HasCustomTag(tag) || constants.IsDefaultTag(tag) {
		return false, nil
	}

	settings.CustomTags = append(settings.CustomTags, tag)
	if err := s.store.SaveSettings(settings); err != nil {
		return false, err
	}
	logger.Info("Custom tag added", "tag", tag)
	return true, nil
}
