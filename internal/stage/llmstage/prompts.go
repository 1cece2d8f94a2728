package llmstage

import (
	"fmt"
	"strings"

	"social_agent/internal/domain"
)

func analyzePrompt(profileRef string) string {
	return fmt.Sprintf(`You analyze social media profiles.
Profile: %s

List the profile owner's top interests, most prominent first, at most five.
Respond with JSON only, in the form {"top_interests": ["..."]}.`, profileRef)
}

func researchPrompt(interests []string) string {
	return fmt.Sprintf(`You research content ideas for social media.
Interests: %s

Suggest one current, specific topic per interest.
Respond with JSON only, in the form {"topics": ["..."]}.`, strings.Join(interests, ", "))
}

func createPrompt(profile *domain.ProfileResult, topics *domain.TopicSet) string {
	return fmt.Sprintf(`You write social media posts.
Author profile: %s
Author interests: %s
Topics to cover: %s

Write one short post in the author's voice, under 280 characters, without hashtags spam.
Respond with JSON only, in the form {"post": "..."}.`,
		profile.ProfileReference,
		strings.Join(profile.TopInterests, ", "),
		strings.Join(topics.Topics, "; "),
	)
}

func reviewPrompt(text string) string {
	return fmt.Sprintf(`You review social media posts before publication.
Post:
%s

Decide whether the post is safe, accurate and on-brand.
Respond with JSON only, in the form {"recommendation": "approve" or "reject", "suggestion": "..."}.
Leave the suggestion empty when approving.`, text)
}
