package poll_test

import "quickpoll/internal/domain/vote"

func newVote(userID, pollID, optionID int64) *vote.Vote {
	return &vote.Vote{UserID: userID, PollID: pollID, OptionID: optionID}
}
