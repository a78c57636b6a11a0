package ksrt

import "testing"

func TestSubjectNameStrategy_Topic(t *testing.T) {
	sns, err := NewSubjectNameStrategy(`events`, ``, false)
	if err != nil {
		t.Fatal(err)
	}

	if have := sns.Subject(); have != `events-value` {
		t.Errorf(`need events-value, have %s`, have)
	}
}

func TestSubjectNameStrategy_TopicKey(t *testing.T) {
	sns, err := NewSubjectNameStrategy(`events`, ``, true)
	if err != nil {
		t.Fatal(err)
	}

	if have := sns.Subject(); have != `events-key` {
		t.Errorf(`need events-key, have %s`, have)
	}
}

func TestSubjectNameStrategy_Record(t *testing.T) {
	sns, err := NewSubjectNameStrategy(``, `com.example.Sample`, false)
	if err != nil {
		t.Fatal(err)
	}

	if have := sns.Subject(); have != `com.example.Sample` {
		t.Errorf(`need com.example.Sample, have %s`, have)
	}
}

func TestSubjectNameStrategy_TopicRecord(t *testing.T) {
	sns, err := NewSubjectNameStrategy(`events`, `com.example.Sample`, false)
	if err != nil {
		t.Fatal(err)
	}

	if have := sns.Subject(); have != `events-com.example.Sample` {
		t.Errorf(`need events-com.example.Sample, have %s`, have)
	}
}

func TestSubjectNameStrategy_NeitherTopicNorRecord(t *testing.T) {
	if _, err := NewSubjectNameStrategy(``, ``, false); err == nil {
		t.Fatal(`need error, have nil`)
	}
}
