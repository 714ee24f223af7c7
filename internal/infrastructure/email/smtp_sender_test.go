package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type fakeDialer struct {
	sent    []*mail.Msg
	err     error
	dialErr error
	dials   int
	closes  int
}

func (f *fakeDialer) DialWithContext(context.Context) error {
	f.dials++
	return f.dialErr
}

func (f *fakeDialer) Close() error {
	f.closes++
	return nil
}

func (f *fakeDialer) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func TestSMTPSender_Send(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Username: "compras@pei.com", Password: "secret", FromName: "Compras PEI"}

	t.Run("builds and sends the message", func(t *testing.T) {
		d := &fakeDialer{}
		s := newSender(d, cfg, zap.NewNop())

		ok := s.Send(context.Background(), " ventas@techsolutions.cl ", "Solicitud de Cotización - RFQ-2026-0001", "Estimado proveedor")
		require.True(t, ok)
		require.Len(t, d.sent, 1)

		to := d.sent[0].GetToString()
		require.Len(t, to, 1)
		assert.Contains(t, to[0], "ventas@techsolutions.cl")
		assert.Equal(t, []string{"Solicitud de Cotización - RFQ-2026-0001"}, d.sent[0].GetGenHeader(mail.HeaderSubject))
		from := d.sent[0].GetFromString()
		assert.Contains(t, from[0], "compras@pei.com")
	})

	t.Run("invalid recipient", func(t *testing.T) {
		d := &fakeDialer{}
		s := newSender(d, cfg, zap.NewNop())

		assert.False(t, s.Send(context.Background(), "no-es-un-correo", "s", "b"))
		assert.Empty(t, d.sent)
	})

	t.Run("transport failure", func(t *testing.T) {
		s := newSender(&fakeDialer{err: errors.New("535 authentication failed")}, cfg, zap.NewNop())
		assert.False(t, s.Send(context.Background(), "a@b.com", "s", "b"))
	})
}

func TestSMTPSender_Ping(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Username: "compras@pei.com", Password: "secret"}

	t.Run("dials and closes", func(t *testing.T) {
		d := &fakeDialer{}
		require.NoError(t, newSender(d, cfg, zap.NewNop()).Ping(context.Background()))
		assert.Equal(t, 1, d.dials)
		assert.Equal(t, 1, d.closes)
		assert.Empty(t, d.sent)
	})

	t.Run("unreachable relay", func(t *testing.T) {
		d := &fakeDialer{dialErr: errors.New("dial tcp: connection refused")}
		err := newSender(d, cfg, zap.NewNop()).Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, 0, d.closes)
	})
}

func TestNewSMTPSender_RequiresCredentials(t *testing.T) {
	_, err := NewSMTPSender(Config{Host: "smtp.example.com"}, zap.NewNop())
	assert.Error(t, err)

	s, err := NewSMTPSender(Config{Host: "smtp.example.com", Username: "u@pei.com", Password: "p"}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestDisabledSender(t *testing.T) {
	assert.False(t, NewDisabledSender(zap.NewNop()).Send(context.Background(), "a@b.com", "s", "b"))
}
