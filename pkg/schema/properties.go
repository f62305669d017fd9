package schema

import "encoding/json"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// VideoProperties is the set of properties which can be patched onto a
// video after upload. Each field maps to a literal dotted wire key at
// serialization time; unset (nil) fields are omitted entirely, never
// emitted as null.
type VideoProperties struct {
	Name                   *string `help:"Video title"`
	Description            *string `help:"Video description"`
	License                *string `help:"License under which the video is offered"`
	Password               *string `help:"Password required to view, when privacy.view is 'password'"`
	ReviewLink             *bool   `help:"Enable the review page"`
	PrivacyView            *string `help:"Who can view the video"`
	PrivacyEmbed           *string `help:"Where the video can be embedded"`
	PrivacyComments        *string `help:"Who can comment on the video"`
	PrivacyDownload        *bool   `help:"Whether the video can be downloaded"`
	PrivacyAdd             *bool   `help:"Whether the video can be added to collections"`
	EmbedColor             *string `help:"Player accent color"`
	EmbedButtonsLike       *bool   `help:"Show the like button on the embedded player"`
	EmbedButtonsShare      *bool   `help:"Show the share button on the embedded player"`
	EmbedButtonsWatchLater *bool   `help:"Show the watch-later button on the embedded player"`
	EmbedTitleName         *string `help:"How the title is shown on the embedded player"`
	EmbedTitleOwner        *string `help:"How the owner is shown on the embedded player"`
}

////////////////////////////////////////////////////////////////////////////////
// MARSHAL

func (p VideoProperties) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 16)
	setString := func(key string, value *string) {
		if value != nil {
			body[key] = *value
		}
	}
	setBool := func(key string, value *bool) {
		if value != nil {
			body[key] = *value
		}
	}
	setString("name", p.Name)
	setString("description", p.Description)
	setString("license", p.License)
	setString("password", p.Password)
	setBool("review_link", p.ReviewLink)
	setString("privacy.view", p.PrivacyView)
	setString("privacy.embed", p.PrivacyEmbed)
	setString("privacy.comments", p.PrivacyComments)
	setBool("privacy.download", p.PrivacyDownload)
	setBool("privacy.add", p.PrivacyAdd)
	setString("embed.color", p.EmbedColor)
	setBool("embed.buttons.like", p.EmbedButtonsLike)
	setBool("embed.buttons.share", p.EmbedButtonsShare)
	setBool("embed.buttons.watchlater", p.EmbedButtonsWatchLater)
	setString("embed.title.name", p.EmbedTitleName)
	setString("embed.title.owner", p.EmbedTitleOwner)
	return json.Marshal(body)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p VideoProperties) String() string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsZero returns true when no property has been set
func (p *VideoProperties) IsZero() bool {
	if p == nil {
		return true
	}
	data, err := json.Marshal(p)
	if err != nil {
		return false
	}
	return string(data) == "{}"
}
