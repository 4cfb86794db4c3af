package internal

import (
	"errors"
	"testing"
)

func TestOfflineReply(t *testing.T) {
	failures := []*Failure{
		nil,
		{Reason: FailureUnreachable, Err: errors.New("dial tcp: refused")},
		{Reason: FailureBadStatus, StatusCode: 503},
		{Reason: FailureMalformed, Err: errors.New("unexpected EOF")},
	}

	tests := []struct {
		flow Flow
		want string
	}{
		{FlowChat, ChatOfflineReply},
		{FlowMultiModal, MultiModalOfflineReply},
		{Flow(""), ChatOfflineReply},
	}

	for _, tt := range tests {
		for _, f := range failures {
			if got := OfflineReply(tt.flow, f); got != tt.want {
				t.Errorf("OfflineReply(%q, %v) = %q, want %q", tt.flow, f, got, tt.want)
			}
		}
	}
}

func TestOfflineReply_FlowsDiffer(t *testing.T) {
	if ChatOfflineReply == MultiModalOfflineReply {
		t.Error("chat and multimodal offline replies should differ")
	}
	if ChatOfflineReply == "" || MultiModalOfflineReply == "" || OfflineNotice == "" {
		t.Error("offline wording must not be empty")
	}
}
