package bellcli

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
)

func invoke[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	resp, err := c.invoke(method, message)
	if err != nil {
		return nil, err
	}
	var d T
	return &d, json.Unmarshal(resp, &d)
}

// CreateOpts carries the optional fields of a new task.
type CreateOpts struct {
	Description string
	Cron        string
}

func (c *Client) Create(title string, intervalMinutes int, opts *CreateOpts) (*common.CreateResponse, error) {
	if opts == nil {
		opts = &CreateOpts{}
	}
	return invoke[common.CreateResponse](c, common.UPDATE_CREATE, &common.CreateParams{
		Title:           title,
		Description:     opts.Description,
		IntervalMinutes: intervalMinutes,
		Cron:            opts.Cron,
	})
}

func (c *Client) Update(taskId, title string, intervalMinutes int, opts *CreateOpts) (*common.UpdateResponse, error) {
	if opts == nil {
		opts = &CreateOpts{}
	}
	return invoke[common.UpdateResponse](c, common.UPDATE_UPDATE, &common.UpdateParams{
		TaskId:          taskId,
		Title:           title,
		Description:     opts.Description,
		IntervalMinutes: intervalMinutes,
		Cron:            opts.Cron,
	})
}

func (c *Client) Delete(taskId string) (bool, error) {
	_, err := c.invoke(common.UPDATE_DELETE, &common.DeleteParams{TaskId: taskId})
	return err == nil, err
}

func (c *Client) Reorder(movedId, targetId string) (*common.ReorderResponse, error) {
	return invoke[common.ReorderResponse](c, common.UPDATE_REORDER, &common.ReorderParams{
		MovedId:  movedId,
		TargetId: targetId,
	})
}

func (c *Client) List() (*common.ListResponse, error) {
	return invoke[common.ListResponse](c, common.UPDATE_LIST, &common.ListParams{})
}

func (c *Client) Flush() (bool, error) {
	_, err := c.invoke(common.UPDATE_FLUSH, &common.FlushParams{})
	return err == nil, err
}

// Attach subscribes this connection to reminder broadcasts. Follow with
// Listen to receive them.
func (c *Client) Attach(taskId string) (*common.AttachResponse, error) {
	return invoke[common.AttachResponse](c, common.UPDATE_ATTACH, &common.AttachParams{TaskId: taskId})
}

func (c *Client) Version() (*common.VersionResponse, error) {
	return invoke[common.VersionResponse](c, common.UPDATE_VERSION, nil)
}
