package capture

// Profile describes how a recognised messenger lays out its chat screen in
// the accessibility tree. Identifiers are short resource names, without the
// "package:id/" prefix.
type Profile struct {
	Name          string
	Apps          []string // Application identifiers served by this profile
	SenderLabelID string   // Nickname shown above a message (group chats only)
	ContentID     string   // Message bubble text
	TitleID       string   // Title bar, holding the peer's name in private chats
}

// Profiles are the messengers with structured reconstruction.
var Profiles = []Profile{
	{
		Name:          "qq",
		Apps:          []string{"com.tencent.mobileqq", "com.tencent.tim"},
		SenderLabelID: "9w",
		ContentID:     "9u",
		TitleID:       "si5",
	},
}

// ProfileFor returns the profile serving app, if any.
func ProfileFor(app string) (Profile, bool) {
	return lookupProfile(Profiles, app)
}

func lookupProfile(profiles []Profile, app string) (Profile, bool) {
	if app == "" {
		return Profile{}, false
	}
	for _, p := range profiles {
		for _, a := range p.Apps {
			if a == app {
				return p, true
			}
		}
	}
	return Profile{}, false
}
