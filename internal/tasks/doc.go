// Package tasks adapts Google Tasks (tasks/v1) to the store.Store capability.
//
// The collection ID is a task list ID ("@default" addresses the user's
// default list) and the credential is an OAuth2 access token with the
// https://www.googleapis.com/auth/tasks scope. Access tokens expire, so a
// new one is supplied through setup_notion when calls start failing with
// 401.
//
// # Example Usage
//
//	client, err := tasks.NewClient(ctx, accessToken, nil)
//	if err != nil {
//	    return err
//	}
//	id, err := client.Create(ctx, tasks.DefaultList, store.Fields{Name: "buy milk"})
//	if err != nil {
//	    return err
//	}
//	err = client.Archive(ctx, id)
package tasks
