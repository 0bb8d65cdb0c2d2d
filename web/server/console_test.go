package server

import (
	"fmt"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	logger.Printf("%s\n", "Test log message")

	select {
	case msg := <-messageChan:
		if msg.Message != "Test log message\n" {
			t.Errorf("Expected message 'Test log message\\n', got '%s'", msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	default:
		t.Error("Expected a console message")
	}
}

func TestWebLogger_FullChannelDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-456", messageChan)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			logger.Printf("Message %d\n", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logger blocked on a full channel")
	}

	if len(messageChan) != 1 {
		t.Errorf("Expected 1 buffered message, got %d", len(messageChan))
	}
	if msg := <-messageChan; msg.Message != "Message 0\n" {
		t.Errorf("Expected first message to be kept, got '%s'", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-789", nil)
	logger.Printf("no channel\n")
}

func TestServer_ConsoleHistoryBounded(t *testing.T) {
	s := NewServer(0)
	logger := NewWebLogger("history", s.consoleChan)

	for round := 0; round < 2; round++ {
		for i := 0; i < consoleHistorySize; i++ {
			logger.Printf("round %d message %d\n", round, i)
		}
		s.drainConsole()
	}

	history := s.drainConsole()
	if len(history) != consoleHistorySize {
		t.Fatalf("Expected %d messages, got %d", consoleHistorySize, len(history))
	}
	if want := fmt.Sprintf("round 1 message %d\n", 0); history[0].Message != want {
		t.Errorf("Expected oldest kept message %q, got %q", want, history[0].Message)
	}
}
