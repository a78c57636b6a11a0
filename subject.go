package ksrt

import "github.com/tryfix/errors"

// SubjectNameStrategy determines the subject a schema registers under.
// The set of strategies matches the registry's standard naming strategies.
type SubjectNameStrategy interface {
	Subject() string
}

// TopicNameStrategy names the subject after the topic, suffixed with -key
// or -value depending on which side of the record the schema describes.
type TopicNameStrategy struct {
	Topic string
	Key   bool
}

func (s TopicNameStrategy) Subject() string {
	if s.Key {
		return s.Topic + `-key`
	}

	return s.Topic + `-value`
}

// RecordNameStrategy names the subject after the fully qualified record
// name, independent of topic.
type RecordNameStrategy struct {
	Record string
}

func (s RecordNameStrategy) Subject() string {
	return s.Record
}

// TopicRecordNameStrategy names the subject after both the topic and the
// fully qualified record name.
type TopicRecordNameStrategy struct {
	Topic  string
	Record string
}

func (s TopicRecordNameStrategy) Subject() string {
	return s.Topic + `-` + s.Record
}

// NewSubjectNameStrategy picks the strategy implied by the given topic and
// record names: both set selects topic-record, topic alone selects topic
// (with the key/value suffix), record alone selects record. At least one of
// topic or record is required.
func NewSubjectNameStrategy(topic, record string, topicKey bool) (SubjectNameStrategy, error) {
	switch {
	case topic != `` && record != ``:
		return TopicRecordNameStrategy{Topic: topic, Record: record}, nil
	case topic != ``:
		return TopicNameStrategy{Topic: topic, Key: topicKey}, nil
	case record != ``:
		return RecordNameStrategy{Record: record}, nil
	default:
		return nil, errors.New(`either --topic or --record is required`)
	}
}
