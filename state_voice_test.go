package discordipc

import (
	"reflect"
	"testing"
)

func TestVoiceState_CurrentBeforeUpdate(t *testing.T) {
	s := NewVoiceState()
	if _, ok := s.Current(); ok {
		t.Fatal("expected no settings before first update")
	}
}

func TestVoiceState_UpdateThenCurrent(t *testing.T) {
	s := NewVoiceState()
	want := VoiceSettings{Mute: true, Deaf: false, Mode: VoiceInputMode{Type: "VOICE_ACTIVITY"}}
	s.Update(want)

	got, ok := s.Current()
	if !ok {
		t.Fatal("expected settings after update")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestVoiceState_LatestUpdateWins(t *testing.T) {
	s := NewVoiceState()
	s.Update(VoiceSettings{Mute: true})
	s.Update(VoiceSettings{Mute: false, Deaf: true})

	got, ok := s.Current()
	if !ok {
		t.Fatal("expected settings")
	}
	if got.Mute || !got.Deaf {
		t.Fatalf("expected the most recent update to be retained, got %+v", got)
	}
}
