package obs

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

// Wire representations of the build service XML documents. Only the
// attributes and elements the workflow needs are mapped.

type requestXML struct {
	ID      string      `xml:"id,attr"`
	Creator string      `xml:"creator,attr"`
	State   stateXML    `xml:"state"`
	Actions []actionXML `xml:"action"`
	Reviews []reviewXML `xml:"review"`
}

type stateXML struct {
	Name string `xml:"name,attr"`
}

type actionXML struct {
	Type   string `xml:"type,attr"`
	Source struct {
		Project string `xml:"project,attr"`
	} `xml:"source"`
}

type reviewXML struct {
	State   string `xml:"state,attr"`
	ByGroup string `xml:"by_group,attr"`
	ByUser  string `xml:"by_user,attr"`
	Who     string `xml:"who,attr"`
}

type collectionXML struct {
	Requests []requestXML `xml:"request"`
}

type personXML struct {
	Login    string `xml:"login"`
	Realname string `xml:"realname"`
	Email    string `xml:"email"`
}

type groupXML struct {
	Title string `xml:"title"`
	Email string `xml:"email"`
}

type directoryXML struct {
	Entries []struct {
		Name string `xml:"name,attr"`
	} `xml:"entry"`
}

type attributesXML struct {
	Attributes []struct {
		Name      string   `xml:"name,attr"`
		Namespace string   `xml:"namespace,attr"`
		Values    []string `xml:"value"`
	} `xml:"attribute"`
}

// attributeWriteXML is the request body for posting an attribute onto
// a project.
type attributeWriteXML struct {
	XMLName   xml.Name          `xml:"attributes"`
	Attribute attributeValueXML `xml:"attribute"`
}

type attributeValueXML struct {
	Namespace string   `xml:"namespace,attr"`
	Name      string   `xml:"name,attr"`
	Values    []string `xml:"value"`
}

type commentsXML struct {
	Comments []commentXML `xml:"comment"`
}

type commentXML struct {
	ID   string `xml:"id,attr"`
	Who  string `xml:"who,attr"`
	When string `xml:"when,attr"`
	Text string `xml:",chardata"`
}

func toDomainRequest(wire requestXML) *domain.Request {
	request := &domain.Request{
		ReqID:   wire.ID,
		State:   wire.State.Name,
		Creator: wire.Creator,
	}

	for _, action := range wire.Actions {
		if action.Source.Project != "" {
			request.SrcProject = action.Source.Project

			break
		}
	}

	for _, review := range wire.Reviews {
		request.Reviews = append(request.Reviews, domain.Review{
			State:   domain.ReviewState(review.State),
			ByGroup: review.ByGroup,
			ByUser:  review.ByUser,
			Who:     review.Who,
		})
	}

	return request
}

func toDomainRequests(wire collectionXML) []*domain.Request {
	requests := make([]*domain.Request, 0, len(wire.Requests))
	for _, request := range wire.Requests {
		requests = append(requests, toDomainRequest(request))
	}

	return requests
}

func toDomainComments(wire commentsXML) []domain.Comment {
	comments := make([]domain.Comment, 0, len(wire.Comments))
	for _, comment := range wire.Comments {
		when, _ := time.Parse(time.RFC3339, comment.When)
		comments = append(comments, domain.Comment{
			ID:   comment.ID,
			Who:  comment.Who,
			When: when,
			Text: strings.TrimSpace(comment.Text),
		})
	}

	return comments
}
