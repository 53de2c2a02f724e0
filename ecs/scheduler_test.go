package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSystem struct {
	name string
	log  *[]string
}

func (s recordSystem) Update(*World) {
	*s.log = append(*s.log, s.name)
}

func TestSchedulerOrder(t *testing.T) {
	cases := []struct {
		name  string
		setup func(s *Scheduler, log *[]string) error
		want  []string
	}{
		{
			name: "insertion_order",
			setup: func(s *Scheduler, log *[]string) error {
				s.Add(recordSystem{"a", log})
				s.Add(recordSystem{"b", log})
				return nil
			},
			want: []string{"a", "b"},
		},
		{
			name: "after_label_registered_later",
			setup: func(s *Scheduler, log *[]string) error {
				if err := s.AddLabeled("movement", recordSystem{"movement", log}, "ai"); err != nil {
					return err
				}
				return s.AddLabeled("ai", recordSystem{"ai", log})
			},
			want: []string{"ai", "movement"},
		},
		{
			name: "chain",
			setup: func(s *Scheduler, log *[]string) error {
				if err := s.AddLabeled("bullets", recordSystem{"bullets", log}, "movement"); err != nil {
					return err
				}
				if err := s.AddLabeled("movement", recordSystem{"movement", log}, "ai"); err != nil {
					return err
				}
				if err := s.AddLabeled("ai", recordSystem{"ai", log}); err != nil {
					return err
				}
				s.Add(recordSystem{"consumer", log})
				return nil
			},
			want: []string{"ai", "movement", "bullets", "consumer"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var log []string
			s := NewScheduler()
			require.NoError(t, c.setup(s, &log))
			s.Update(NewWorld())
			assert.Equal(t, c.want, log)
		})
	}
}

func TestSchedulerErrors(t *testing.T) {
	var log []string

	s := NewScheduler()
	require.NoError(t, s.AddLabeled("a", recordSystem{"a", &log}))
	require.ErrorIs(t, s.AddLabeled("a", recordSystem{"a", &log}), ErrDuplicateLabel)

	unknown := NewScheduler()
	require.NoError(t, unknown.AddLabeled("a", recordSystem{"a", &log}, "missing"))
	_, err := unknown.Systems()
	assert.ErrorIs(t, err, ErrUnknownLabel)

	cycle := NewScheduler()
	require.NoError(t, cycle.AddLabeled("a", recordSystem{"a", &log}, "b"))
	require.NoError(t, cycle.AddLabeled("b", recordSystem{"b", &log}, "a"))
	_, err = cycle.Systems()
	assert.ErrorIs(t, err, ErrSystemCycle)
}
