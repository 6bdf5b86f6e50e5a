package model

// Topic is the closed set of categories a whisper can be posted under.
type Topic string

const (
	TopicConfession Topic = "confession"
	TopicLife       Topic = "life"
	TopicSecrets    Topic = "secrets"
	TopicAdvice     Topic = "advice"
	TopicLove       Topic = "love"
	TopicRandom     Topic = "random"
)

// TopicAll is the query value meaning "no topic filter". It is not a
// storable topic.
const TopicAll = "all"

var allTopics = []Topic{
	TopicConfession,
	TopicLife,
	TopicSecrets,
	TopicAdvice,
	TopicLove,
	TopicRandom,
}

func (t Topic) Valid() bool {
	switch t {
	case TopicConfession, TopicLife, TopicSecrets, TopicAdvice, TopicLove, TopicRandom:
		return true
	}
	return false
}

func (t Topic) String() string {
	return string(t)
}

// Topics returns the enumerated set in a stable order.
func Topics() []Topic {
	out := make([]Topic, len(allTopics))
	copy(out, allTopics)
	return out
}
